package formview

import "github.com/goliatone/go-formview/pkg/serialize"

// Submission is a typed view over submitted data. FavoriteDrink is nil when
// the key was absent, which is distinct from an empty answer.
type Submission struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	IsOver21      bool    `json:"is_over_21"`
	FavoriteDrink *string `json:"favorite_drink,omitempty"`
}

// Decode reads the known keys of data. Unknown keys and mistyped values are
// ignored.
func Decode(data serialize.Data) Submission {
	var out Submission
	out.FirstName, _ = data.String(FieldFirstName)
	out.LastName, _ = data.String(FieldLastName)
	out.IsOver21, _ = data.Bool(FieldIsOver21)
	if drink, ok := data.String(FieldFavoriteDrink); ok {
		out.FavoriteDrink = &drink
	}
	return out
}
