package tmplcat

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"github.com/wedsite/wedsite/pkg/decoder"
	"github.com/wedsite/wedsite/pkg/wedmodel"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ImagePathPrefix is the same-origin route that serves template images.
const ImagePathPrefix = "/api/invitations/image/"

// File returns the template's file name, the only field an image URL or a
// delete request can be derived from.
func File(raw map[string]any) string {
	return first(Property(raw, "file"), Property(raw, "fileName"), Property(raw, "filename"))
}

// TemplateID falls back from id to template_id to the slug of the file stem.
func TemplateID(raw map[string]any) string {
	return first(Property(raw, "id"), Property(raw, "templateId"), slugOf(stem(File(raw))))
}

func TemplateName(raw map[string]any) string {
	return first(Property(raw, "name"), Property(raw, "templateName"), Property(raw, "title"), stem(File(raw)))
}

// TemplateImageURL ignores any absolute URL the backend supplies and always
// points at the image proxy route for the template's file.
func TemplateImageURL(raw map[string]any) string {
	return ImageURL(File(raw))
}

func ImageURL(file string) string {
	if file == "" {
		return ""
	}

	return ImagePathPrefix + url.PathEscape(file)
}

// Normalize maps one backend listing entry to the canonical template shape.
func Normalize(raw map[string]any) wedmodel.Template {
	file := File(raw)
	name := TemplateName(raw)
	id := TemplateID(raw)
	if id == "" {
		id = slugOf(name)
	}

	return wedmodel.Template{
		ID:          id,
		Name:        name,
		DisplayName: first(Property(raw, "displayName"), DisplayName(name), id),
		File:        file,
		Description: Property(raw, "description"),
		ImageURL:    ImageURL(file),
		Deletable:   file != "",
	}
}

// ParseListing accepts the shapes the templates endpoint has been seen to
// return: a bare array, or an object wrapping it under "templates" or
// "data". Array entries may be objects or bare file names.
func ParseListing(body []byte) ([]wedmodel.Template, error) {
	entries, err := decoder.DecodeList[json.RawMessage](body, "templates", "data")
	if err != nil {
		return nil, fmt.Errorf("unable to parse template listing: %w", err)
	}

	templates := make([]wedmodel.Template, 0, len(entries))
	for _, entry := range entries {
		var file string
		if err := json.Unmarshal(entry, &file); err == nil {
			templates = append(templates, Normalize(map[string]any{"file": file}))
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal(entry, &raw); err != nil {
			return nil, fmt.Errorf("unable to parse template entry: %w", err)
		}
		templates = append(templates, Normalize(raw))
	}

	return templates, nil
}

// DisplayName turns "rustic_barn-v2" into "Rustic Barn V2".
func DisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	return cases.Title(language.English).String(strings.Join(words, " "))
}

func stem(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}

func slugOf(s string) string {
	if s == "" {
		return ""
	}

	return slug.Make(s)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
