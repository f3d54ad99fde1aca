package targets

import "artargets/internal/domain/target"

type listInput struct {
	Refresh bool `query:"refresh" doc:"Reload targets from the store before responding"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	User    *userResponse    `json:"user" doc:"Current session, null when nobody is logged in"`
	Targets []targetResponse `json:"targets"`
}

type userResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email" example:"ana@example.com"`
}

type findInput struct {
	ID string `path:"id" doc:"Target id"`
}

type findOutput struct {
	Body targetResponse
}

type targetResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name" example:"photo.png"`
	Type       string `json:"type" enum:"marker,nft,image"`
	TypeName   string `json:"type_name" example:"Изображение"`
	ContentURL string `json:"contenturl" doc:"Public URL of the uploaded file"`

	MarkerPreset string `json:"markerpreset,omitempty" example:"hiro"`
	PatternURL   string `json:"patternurl,omitempty"`
	NFTURLBase   string `json:"nfturlbase,omitempty"`
	Scale        string `json:"scale,omitempty" example:"1 1 1"`
	Position     string `json:"position,omitempty" example:"0 0 0"`
	Rotation     string `json:"rotation,omitempty" example:"-90 0 0"`

	Version int `json:"version,omitempty"`
}

func toResponse(t target.Target) targetResponse {
	return targetResponse{
		ID:           t.ID,
		Name:         t.Name,
		Type:         t.Type.String(),
		TypeName:     t.Type.DisplayName(),
		ContentURL:   t.ContentURL,
		MarkerPreset: t.MarkerPreset,
		PatternURL:   t.PatternURL,
		NFTURLBase:   t.NFTURLBase,
		Scale:        t.Scale,
		Position:     t.Position,
		Rotation:     t.Rotation,
		Version:      t.Version,
	}
}
