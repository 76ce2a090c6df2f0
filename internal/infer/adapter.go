package infer

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

// Endpoint defaults
const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModel    = "llama3"
	DefaultTimeout  = 60 * time.Second

	chatPath = "/api/chat"
)

// chatMessage is one turn of a chat-completion exchange.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatResponse is the non-streaming response body.
type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Adapter queries an Ollama-style chat endpoint for song metadata.
// Infer never fails: any transport, protocol, or parse problem degrades
// to the filename-based fallback record.
type Adapter struct {
	client *resty.Client
	model  string
}

// NewAdapter creates an adapter for the given endpoint and model name.
func NewAdapter(endpoint, modelName string, timeout time.Duration) *Adapter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout)
	return &Adapter{
		client: client,
		model:  modelName,
	}
}

// Infer returns a tag record for one downloaded file. On success the
// record carries the inferred fields with the playlist name as album;
// on any failure the deterministic fallback record is returned instead.
func (a *Adapter) Infer(ctx context.Context, stem, playlistName string, meta model.SourceVideoMeta) model.TagRecord {
	req := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(playlistName, meta)},
		},
		Stream: false,
	}

	var out chatResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(chatPath)
	if err != nil {
		log.Printf("Inference request failed for %s: %v", stem, err)
		return model.FallbackRecord(stem, playlistName)
	}
	if resp.IsError() {
		log.Printf("Inference endpoint returned %s for %s", resp.Status(), stem)
		return model.FallbackRecord(stem, playlistName)
	}

	rec, err := ExtractTagRecord(out.Message.Content)
	if err != nil {
		log.Printf("Inference reply unusable for %s: %v", stem, err)
		return model.FallbackRecord(stem, playlistName)
	}

	rec.Album = playlistName
	rec.Provenance = model.ProvenanceInferred
	return rec
}
