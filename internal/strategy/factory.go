package strategy

const (
	KindConfluence = "confluence"
	KindRSI        = "rsi"
)

// NewEngine: confluence для /margin, rsi для вотчера и /smargin.
func NewEngine(kind string) Engine {
	switch kind {
	case KindRSI:
		return NewRSIOnly()
	default:
		return NewConfluence()
	}
}
