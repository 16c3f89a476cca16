package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteConcatList(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.txt")

	inputs := []string{
		"/clips/CAM1-20230101120000-20230101120459.mp4",
		"/clips/CAM1-20230101120500-20230101120959.mp4",
	}
	if err := writeConcatList(listPath, inputs); err != nil {
		t.Fatalf("writeConcatList: %v", err)
	}

	got, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "file '/clips/CAM1-20230101120000-20230101120459.mp4'\n" +
		"file '/clips/CAM1-20230101120500-20230101120959.mp4'\n"
	if string(got) != want {
		t.Errorf("list file:\n%q\nwant:\n%q", string(got), want)
	}
}

func TestWriteConcatList_QuotedPath(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.txt")

	if err := writeConcatList(listPath, []string{"/clips/bob's cam-20230101120000-20230101120005.mp4"}); err != nil {
		t.Fatalf("writeConcatList: %v", err)
	}
	got, _ := os.ReadFile(listPath)
	want := "file '/clips/bob'\\''s cam-20230101120000-20230101120005.mp4'\n"
	if string(got) != want {
		t.Errorf("list file = %q, want %q", string(got), want)
	}
}

func TestConcat_RejectsSingleInput(t *testing.T) {
	_, err := Concat(context.Background(), []string{"/clips/only.mp4"}, "/out/merged.mp4")
	if err == nil {
		t.Fatal("Concat with one input succeeded, want error")
	}
	var mf *MergeFailedError
	if !errors.As(err, &mf) {
		t.Errorf("error type = %T, want *MergeFailedError", err)
	}
}
