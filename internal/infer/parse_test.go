package infer

import (
	"testing"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

func TestExtractTagRecord(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    model.TagRecord
		wantErr bool
	}{
		{
			name: "clean object",
			text: `{"title": "Song", "artist": "Artist", "remix": false, "remixer": "", "year": "2021", "genre": "House"}`,
			want: model.TagRecord{Title: "Song", Artist: "Artist", Year: "2021", Genre: "House"},
		},
		{
			name: "object wrapped in prose",
			text: "Sure! Here is the metadata you asked for:\n{\"title\": \"Song\", \"artist\": \"Artist\"}\nLet me know if you need more.",
			want: model.TagRecord{Title: "Song", Artist: "Artist"},
		},
		{
			name: "markdown fenced object",
			text: "```json\n{\"title\": \"Song\", \"artist\": \"Artist\"}\n```",
			want: model.TagRecord{Title: "Song", Artist: "Artist"},
		},
		{
			name: "trailing comma repaired",
			text: `{"title": "Song", "artist": "Artist",}`,
			want: model.TagRecord{Title: "Song", Artist: "Artist"},
		},
		{
			name: "remix as string yes",
			text: `{"title": "Song", "remix": "yes", "remixer": "Someone"}`,
			want: model.TagRecord{Title: "Song", Remix: true, Remixer: "Someone"},
		},
		{
			name: "remix as string true",
			text: `{"title": "Song", "remix": "True"}`,
			want: model.TagRecord{Title: "Song", Remix: true},
		},
		{
			name: "remix as number one",
			text: `{"title": "Song", "remix": 1}`,
			want: model.TagRecord{Title: "Song", Remix: true},
		},
		{
			name: "remix as number zero",
			text: `{"title": "Song", "remix": 0}`,
			want: model.TagRecord{Title: "Song"},
		},
		{
			name: "year as number",
			text: `{"title": "Song", "year": 1999}`,
			want: model.TagRecord{Title: "Song", Year: "1999"},
		},
		{
			name: "braces inside string values",
			text: `{"title": "Song {Extended}", "artist": "A}B"}`,
			want: model.TagRecord{Title: "Song {Extended}", Artist: "A}B"},
		},
		{
			name: "escaped quotes inside values",
			text: `{"title": "Song \"Live\"", "artist": "Artist"}`,
			want: model.TagRecord{Title: `Song "Live"`, Artist: "Artist"},
		},
		{
			name: "nested object picks outermost",
			text: `{"title": "Song", "extra": {"ignored": true}}`,
			want: model.TagRecord{Title: "Song"},
		},
		{
			name: "whitespace padding trimmed",
			text: `{"title": "  Song  ", "artist": " Artist "}`,
			want: model.TagRecord{Title: "Song", Artist: "Artist"},
		},
		{
			name:    "no JSON at all",
			text:    "I could not determine the metadata.",
			wantErr: true,
		},
		{
			name:    "empty string",
			text:    "",
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			text:    `{"title": "Song", "artist": "Artist"`,
			wantErr: true,
		},
		{
			name:    "object with empty title",
			text:    `{"title": "", "artist": "Artist"}`,
			wantErr: true,
		},
		{
			name:    "object with whitespace title",
			text:    `{"title": "   ", "artist": "Artist"}`,
			wantErr: true,
		},
		{
			name:    "object missing title key",
			text:    `{"artist": "Artist"}`,
			wantErr: true,
		},
		{
			name:    "malformed body after repair",
			text:    `{"title": "Song" "artist": "Artist"}`,
			wantErr: true,
		},
		{
			name:    "JSON array not object",
			text:    `["title", "Song"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTagRecord(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractTagRecord() expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTagRecord() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractTagRecord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
