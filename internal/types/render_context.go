//nolint:revive // types is a standard Go package name pattern
package types

// RenderContext aggregates the records a document is rendered from.
// It is rebuilt for every render and never persisted.
type RenderContext struct {
	Client   Client   `json:"client"`
	Project  Project  `json:"project"`
	Settings Settings `json:"settings"`
}

// Data returns the nested map walked by the placeholder engine.
func (rc RenderContext) Data() map[string]any {
	return map[string]any{
		"client":   rc.Client.Fields(),
		"project":  rc.Project.Fields(),
		"settings": rc.Settings.Fields(),
	}
}
