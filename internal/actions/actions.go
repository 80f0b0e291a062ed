// Package actions declares the collaborator capability the dialogue core
// calls into for everything that leaves the process: weather, news, search,
// maps, music, translation and local OS operations. The core only ever sees
// response strings or descriptive errors, never structured payloads.
package actions

import "context"

// Capability is consumed by intent handlers. Implementations own their own
// timeouts; the core imposes none beyond the per-call context.
type Capability interface {
	GetWeather(ctx context.Context, city, timeHint string) (string, error)
	GetNews(ctx context.Context) (string, error)
	SearchInternet(ctx context.Context, query string) (string, error)
	SearchMap(ctx context.Context, location string) (string, error)
	PlayMusic(ctx context.Context, name string) (string, error)
	Translate(ctx context.Context, text, targetLang string) (string, error)
	OpenFolder(ctx context.Context, path string) (string, error)
	OpenApplication(ctx context.Context, name string) (string, error)
	ListFiles(ctx context.Context, dir string) (string, error)
}
