package target

// Target - запись об одном AR-ассете пользователя и публичном адресе его файла.
type Target struct {
	ID         string `json:"id,omitempty"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Type       Type   `json:"type"`
	ContentURL string `json:"contenturl"`

	// AR-метаданные передаются как есть
	MarkerPreset string `json:"markerpreset,omitempty"`
	PatternURL   string `json:"patternurl,omitempty"`
	NFTURLBase   string `json:"nfturlbase,omitempty"`
	Scale        string `json:"scale,omitempty"`
	Position     string `json:"position,omitempty"`
	Rotation     string `json:"rotation,omitempty"`

	Version int `json:"version,omitempty"`
}

// Patch - частичное обновление. Nil-поля не трогаются.
type Patch struct {
	Name         *string `json:"name,omitempty"`
	Type         *Type   `json:"type,omitempty"`
	MarkerPreset *string `json:"markerpreset,omitempty"`
	PatternURL   *string `json:"patternurl,omitempty"`
	NFTURLBase   *string `json:"nfturlbase,omitempty"`
	Scale        *string `json:"scale,omitempty"`
	Position     *string `json:"position,omitempty"`
	Rotation     *string `json:"rotation,omitempty"`

	// ExpectedVersion делает обновление условным.
	ExpectedVersion *int `json:"-"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.MarkerPreset == nil && p.PatternURL == nil &&
		p.NFTURLBase == nil && p.Scale == nil && p.Position == nil && p.Rotation == nil
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Type != nil {
		return p.Type.Validate()
	}
	return nil
}

// Apply возвращает копию t с применёнными полями патча.
func (p Patch) Apply(t Target) Target {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.MarkerPreset != nil {
		t.MarkerPreset = *p.MarkerPreset
	}
	if p.PatternURL != nil {
		t.PatternURL = *p.PatternURL
	}
	if p.NFTURLBase != nil {
		t.NFTURLBase = *p.NFTURLBase
	}
	if p.Scale != nil {
		t.Scale = *p.Scale
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.Rotation != nil {
		t.Rotation = *p.Rotation
	}
	return t
}

// Fields возвращает патч как набор колонок для хранилища.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Type != nil {
		fields["type"] = string(*p.Type)
	}
	if p.MarkerPreset != nil {
		fields["markerpreset"] = *p.MarkerPreset
	}
	if p.PatternURL != nil {
		fields["patternurl"] = *p.PatternURL
	}
	if p.NFTURLBase != nil {
		fields["nfturlbase"] = *p.NFTURLBase
	}
	if p.Scale != nil {
		fields["scale"] = *p.Scale
	}
	if p.Position != nil {
		fields["position"] = *p.Position
	}
	if p.Rotation != nil {
		fields["rotation"] = *p.Rotation
	}
	return fields
}
