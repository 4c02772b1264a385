package forms

// FormSpec is the Zendesk ticket form a submission type is filed under.
type FormSpec struct {
	ID   int64
	Tags []string
}

// Field is a Zendesk custom field addressable by submission name.
type Field struct {
	Name string
	ID   int64
}

// imageURLField carries a percent-encoded URL that is decoded before sending.
const imageURLField = "ImageUrl"

var formsByType = map[string]FormSpec{
	"promotion": {ID: 27679416279323, Tags: []string{"tipo_promocion", "portal"}},
	"test":      {ID: 35689142494107, Tags: []string{}},
}

// FormTypes lists the configured submission types.
func FormTypes() []string {
	types := make([]string, 0, len(formsByType))
	for t := range formsByType {
		types = append(types, t)
	}
	return types
}
