package drive

import "testing"

func TestGetExportMime_Defaults(t *testing.T) {
	cases := []struct {
		fileMime string
		want     string
	}{
		{GoogleAppsMimePrefix + "spreadsheet", MimeTypeXlsx},
		{GoogleAppsMimePrefix + "document", MimeTypeDocx},
		{GoogleAppsMimePrefix + "presentation", MimeTypePptx},
		{GoogleAppsMimePrefix + "drawing", MimeTypePdf},
		{GoogleAppsMimePrefix + "form", MimeTypePdf},
		{GoogleAppsMimePrefix + "jam", MimeTypePdf},
	}

	for _, c := range cases {
		got, err := getExportMime("", c.fileMime)
		if err != nil {
			t.Fatalf("%s: %s", c.fileMime, err)
		}
		if got != c.want {
			t.Fatalf("%s: expected %s, got %s", c.fileMime, c.want, got)
		}
	}
}

func TestGetExportMime_UserOverride(t *testing.T) {
	got, err := getExportMime("text/csv", GoogleAppsMimePrefix+"spreadsheet")
	if err != nil {
		t.Fatal(err)
	}
	if got != "text/csv" {
		t.Fatalf("user mime should win, got %s", got)
	}
}

func TestGetExportMime_NotExportable(t *testing.T) {
	if _, err := getExportMime("", "image/png"); err == nil {
		t.Fatal("native binary type should not be exportable")
	}

	if _, err := getExportMime("", DirectoryMimeType); err == nil {
		t.Fatal("folders should not be exportable")
	}
}

func TestGetExportFilename(t *testing.T) {
	if got := getExportFilename("sheet1", MimeTypeXlsx); got != "sheet1.xlsx" {
		t.Fatalf("expected sheet1.xlsx, got %s", got)
	}

	if got := getExportFilename("drawing1", MimeTypePdf); got != "drawing1.pdf" {
		t.Fatalf("expected drawing1.pdf, got %s", got)
	}

	if got := getExportFilename("raw", "application/unknown"); got != "raw" {
		t.Fatalf("unknown export mime should keep name, got %s", got)
	}
}

func TestCanDownload(t *testing.T) {
	if canDownload(GoogleAppsMimePrefix + "document") {
		t.Fatal("google docs have no native binary form")
	}

	if !canDownload("text/csv") {
		t.Fatal("regular files are directly downloadable")
	}

	if !canDownload("") {
		t.Fatal("unknown mime should attempt direct download")
	}
}
