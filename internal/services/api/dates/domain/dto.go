// Package domain holds the date resolution request and response types
package domain

// MaxItems bounds a single resolve request
const MaxItems = 5000

// ResolveItem is one raw value with its optional days elapsed hint
type ResolveItem struct {
	Value string `json:"value" validate:"max=256"  example:"03-04-24"`
	Hint  *int   `json:"hint,omitempty"            example:"45"`
}

// ResolveInput is the resolve request, today defaults to the server date
type ResolveInput struct {
	Today string        `json:"today,omitempty" validate:"omitempty,isodate"      example:"2024-06-03"`
	Items []ResolveItem `json:"items"           validate:"required,min=1,max=5000,dive"`
}

// ResolvedItem is aligned with the request item at the same index
type ResolvedItem struct {
	Value    string `json:"value"    example:"03-04-24"`
	ISO      string `json:"iso"      example:"2024-04-03"`
	Display  string `json:"display"  example:"03-04-24"`
	Resolved bool   `json:"resolved" example:"true"`
}

// ResolveOutput is the resolve response
type ResolveOutput struct {
	Today        string         `json:"today"        example:"2024-06-03"`
	Resolved     int            `json:"resolved"     example:"1"`
	Unresolvable int            `json:"unresolvable" example:"0"`
	Missing      int            `json:"missing"      example:"0"`
	Items        []ResolvedItem `json:"items"`
}
