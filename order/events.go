package order

// Event is the sealed union of transition requests. Each variant
// carries only the data its transition needs and implies its target
// state tag.
type Event interface {
	Target() string
	sealedEvent()
}

// Confirm requests pending -> confirmed.
type Confirm struct{}

// Ship requests confirmed -> shipped.
type Ship struct {
	TrackingNumber string
}

// Deliver requests shipped -> delivered.
type Deliver struct{}

// Cancel requests a move to cancelled, recording the reason.
type Cancel struct {
	Reason string
}

func (Confirm) Target() string { return StatusConfirmed }
func (Ship) Target() string    { return StatusShipped }
func (Deliver) Target() string { return StatusDelivered }
func (Cancel) Target() string  { return StatusCancelled }

func (Confirm) sealedEvent() {}
func (Ship) sealedEvent()    {}
func (Deliver) sealedEvent() {}
func (Cancel) sealedEvent()  {}
