package services

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PostForm is the author-submitted content of a post, as bound from an HTML form or JSON body.
type PostForm struct {
	Title    string `form:"title" json:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" json:"subtitle" validate:"required,max=250"`
	Author   string `form:"author" json:"author" validate:"required,max=250"`
	ImgURL   string `form:"img_url" json:"img_url" validate:"required,max=250,http_url"`
	Body     string `form:"body" json:"body" validate:"required"`
}

// PostFormFromMap builds a form from loosely typed field values; unknown keys are ignored.
func PostFormFromMap(fields map[string]string) PostForm {
	return PostForm{
		Title:    fields["title"],
		Subtitle: fields["subtitle"],
		Author:   fields["author"],
		ImgURL:   fields["img_url"],
		Body:     fields["body"],
	}
}

func (f PostForm) normalized() PostForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	f.Author = strings.TrimSpace(f.Author)
	f.ImgURL = strings.TrimSpace(f.ImgURL)
	return f
}

// ValidationError reports user-correctable problems with a submission, keyed by form field name.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid post: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func validationErrorFrom(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Fields: fields, cause: err}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "url", "http_url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
