package tagging

import (
	"os"
	"path/filepath"
	"testing"

	mp4tag "github.com/zhaarey/go-mp4tag"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

func TestBuildTags(t *testing.T) {
	tests := []struct {
		name string
		rec  model.TagRecord
		want mp4tag.MP4Tags
	}{
		{
			name: "full record",
			rec: model.TagRecord{
				Title:   "Song",
				Artist:  "Artist",
				Remix:   true,
				Remixer: "Someone",
				Year:    "2021",
				Genre:   "House",
				Album:   "Mixes",
			},
			want: mp4tag.MP4Tags{
				Title:       "Song",
				Artist:      "Artist",
				Album:       "Mixes",
				CustomGenre: "House",
				Year:        2021,
				Comment:     "Remix by Someone",
			},
		},
		{
			name: "fallback record",
			rec:  model.FallbackRecord("Artist - Song [dQw4w9WgXcQ]", "Mixes"),
			want: mp4tag.MP4Tags{
				Title: "Artist - Song [dQw4w9WgXcQ]",
				Album: "Mixes",
			},
		},
		{
			name: "non-numeric year dropped",
			rec:  model.TagRecord{Title: "Song", Year: "around 2020"},
			want: mp4tag.MP4Tags{Title: "Song"},
		},
		{
			name: "remix without remixer leaves no comment",
			rec:  model.TagRecord{Title: "Song", Remix: true},
			want: mp4tag.MP4Tags{Title: "Song"},
		},
		{
			name: "remixer without remix flag leaves no comment",
			rec:  model.TagRecord{Title: "Song", Remixer: "Someone"},
			want: mp4tag.MP4Tags{Title: "Song"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildTags(tt.rec)
			if got.Title != tt.want.Title {
				t.Errorf("Title = %q, want %q", got.Title, tt.want.Title)
			}
			if got.Artist != tt.want.Artist {
				t.Errorf("Artist = %q, want %q", got.Artist, tt.want.Artist)
			}
			if got.Album != tt.want.Album {
				t.Errorf("Album = %q, want %q", got.Album, tt.want.Album)
			}
			if got.CustomGenre != tt.want.CustomGenre {
				t.Errorf("CustomGenre = %q, want %q", got.CustomGenre, tt.want.CustomGenre)
			}
			if got.Year != tt.want.Year {
				t.Errorf("Year = %d, want %d", got.Year, tt.want.Year)
			}
			if got.Comment != tt.want.Comment {
				t.Errorf("Comment = %q, want %q", got.Comment, tt.want.Comment)
			}
		})
	}
}

func TestLoadCover(t *testing.T) {
	t.Run("jpg passes through", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cover.jpg")
		data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		pic, err := loadCover(path)
		if err != nil {
			t.Fatalf("loadCover() error = %v", err)
		}
		if pic.Format != mp4tag.ImageTypeJPEG {
			t.Errorf("format = %v, want JPEG", pic.Format)
		}
		if len(pic.Data) != len(data) {
			t.Errorf("data length = %d, want %d", len(pic.Data), len(data))
		}
	})

	t.Run("png passes through", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cover.png")
		if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0644); err != nil {
			t.Fatal(err)
		}

		pic, err := loadCover(path)
		if err != nil {
			t.Fatalf("loadCover() error = %v", err)
		}
		if pic.Format != mp4tag.ImageTypePNG {
			t.Errorf("format = %v, want PNG", pic.Format)
		}
	})

	t.Run("corrupt webp fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cover.webp")
		if err := os.WriteFile(path, []byte("not a webp"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := loadCover(path); err == nil {
			t.Error("loadCover() expected error for corrupt webp")
		}
	})

	t.Run("unsupported extension fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cover.gif")
		if err := os.WriteFile(path, []byte("gif"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := loadCover(path); err == nil {
			t.Error("loadCover() expected error for unsupported extension")
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if _, err := loadCover(filepath.Join(t.TempDir(), "none.jpg")); err == nil {
			t.Error("loadCover() expected error for missing file")
		}
	})
}

func TestWriterApplyInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-audio.m4a")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter()
	if err := w.Apply(path, model.TagRecord{Title: "Song"}); err == nil {
		t.Error("Apply() expected error for non-MP4 file")
	}
}
