package models

type Direction string

const (
	DirectionNone  Direction = "NONE"
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Signal: ответ классификатора, не сохраняется.
type Signal struct {
	Symbol     string
	Interval   string
	Direction  Direction
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	Confidence float64
	Reason     string
}

func (s Signal) IsNone() bool {
	return s.Direction == "" || s.Direction == DirectionNone
}
