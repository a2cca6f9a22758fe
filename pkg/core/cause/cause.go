// Package cause defines the closed set of canonical causes of death the
// scenario engine adjusts, and the classifier from raw UCD labels to that set.
package cause

// Key is a canonical cause-of-death category.
type Key string

const (
	Cancer       Key = "cancer"
	HeartDisease Key = "heart_disease"
	Stroke       Key = "stroke"
	LowerResp    Key = "lower_resp"
	Accidents    Key = "accidents"

	// Unrecognized marks a UCD label with no canonical mapping. Rows tagged
	// with it still contribute to baseline totals but never receive a
	// non-neutral adjustment factor.
	Unrecognized Key = "unrecognized"
)

// Keys returns the five adjustable causes in canonical order.
func Keys() []Key {
	return []Key{Cancer, HeartDisease, Stroke, LowerResp, Accidents}
}

// Recognized reports whether k is one of the five adjustable causes.
func (k Key) Recognized() bool {
	switch k {
	case Cancer, HeartDisease, Stroke, LowerResp, Accidents:
		return true
	}
	return false
}

// Parse maps a raw string to a recognized Key. Unlike Classify it matches the
// short canonical names (the wire/UI form), not the UCD labels.
func Parse(s string) (Key, bool) {
	k := Key(s)
	return k, k.Recognized()
}

// ucdMap holds the exact UCD labels as they appear in the CDC WONDER export.
// No fuzzy matching: the source labels are already normalized upstream.
var ucdMap = map[string]Key{
	"#Malignant neoplasms (C00-C97)":                        Cancer,
	"#Diseases of heart (I00-I09,I11,I13,I20-I51)":          HeartDisease,
	"#Cerebrovascular diseases (I60-I69)":                   Stroke,
	"#Chronic lower respiratory diseases (J40-J47)":         LowerResp,
	"#Accidents (unintentional injuries) (V01-X59,Y85-Y86)": Accidents,
}

// Classify maps a raw UCD label to its canonical Key. Unknown labels return
// Unrecognized; they never produce an error.
func Classify(ucd string) Key {
	if k, ok := ucdMap[ucd]; ok {
		return k
	}
	return Unrecognized
}
