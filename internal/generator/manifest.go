package generator

import (
	"encoding/json"

	"github.com/Mavwarf/favicon/internal/catalog"
)

// ManifestIcon is one entry of the web manifest's icons array.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest is the subset of a web app manifest this tool writes.
type Manifest struct {
	Icons []ManifestIcon `json:"icons"`
}

// BuildManifest lists every catalog asset flagged for the manifest.
func BuildManifest() Manifest {
	var m Manifest
	for _, a := range catalog.ManifestAssets() {
		icon := ManifestIcon{
			Src:   "/" + a.Filename,
			Sizes: a.SizeString(),
			Type:  a.MediaType(),
		}
		if a.Maskable {
			icon.Purpose = "maskable"
		}
		m.Icons = append(m.Icons, icon)
	}
	return m
}

func (m Manifest) encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
