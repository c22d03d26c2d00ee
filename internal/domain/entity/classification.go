package entity

// Clasificación productiva de mesas y artículos. Los traslados solo se
// permiten entre mesas de la misma clasificación.
const (
	ClassificationTriploid = "TRIPLOID"
	ClassificationDiploid  = "DIPLOID"
)

// ValidClassification indica si el valor es una clasificación conocida.
func ValidClassification(c string) bool {
	return c == ClassificationTriploid || c == ClassificationDiploid
}
