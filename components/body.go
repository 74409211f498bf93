package components

// Appearance holds how an item is drawn. Ribbon is only set on gifts.
type Appearance struct {
	Color  string  `inspect:"label"`
	Ribbon string  `inspect:"label"`
	Scale  float64 `inspect:"label,fmt:%.2f"`
}

// Blink drives the twinkle of a light.
type Blink struct {
	Phase  float64 `inspect:"bar,max:10"` // offset into the blink cycle
	Strand int     `inspect:"label"`      // spiral strand, -1 when scattered
}
