package books

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookFields is the set of values submitted by the create and update forms.
type BookFields struct {
	Title  string `form:"title" validate:"required,max=255"`
	Author string `form:"author" validate:"required,max=255"`
	Genre  string `form:"genre" validate:"max=100"`
	Year   string `form:"year" validate:"omitempty,number"`
}

// FieldsFromBook returns the form values of a persisted book.
func FieldsFromBook(book *entities.Book) BookFields {
	return BookFields{
		Title:  book.Title,
		Author: book.Author,
		Genre:  book.Genre,
		Year:   book.YearString(),
	}
}

// Normalize trims surrounding whitespace from every field.
func (f BookFields) Normalize() BookFields {
	return BookFields{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
		Genre:  strings.TrimSpace(f.Genre),
		Year:   strings.TrimSpace(f.Year),
	}
}

var fieldOrder = []string{"title", "author", "genre", "year"}

var fieldLabels = map[string]string{
	"title":  "Title",
	"author": "Author",
	"genre":  "Genre",
	"year":   "Year",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateFields checks normalized fields and parses the year. A nil
// failure means the fields can be persisted.
func validateFields(fields BookFields) (*int, *ValidationFailure) {
	failure := &ValidationFailure{Fields: fields}

	if err := validate.Struct(fields); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			failure.add("title", err.Error())
			return nil, failure
		}
		for _, fe := range verrs {
			failure.add(fe.Field(), buildMessage(fe))
		}
	}

	var year *int
	if fields.Year != "" && !failure.HasError("year") {
		y, err := strconv.Atoi(fields.Year)
		if err != nil {
			failure.add("year", fmt.Sprintf("%q must be a whole number", fieldLabels["year"]))
		} else {
			year = &y
		}
	}

	if len(failure.Errors) > 0 {
		return nil, failure
	}
	return year, nil
}

func buildMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", label)
	case "max":
		return fmt.Sprintf("%q must be at most %s characters", label, fe.Param())
	case "number":
		return fmt.Sprintf("%q must be a whole number", label)
	}
	return fmt.Sprintf("%q is invalid (%s)", label, fe.Tag())
}
