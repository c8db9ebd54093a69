package registry

// Category is how the registry resolves a type.
type Category int

const (
	Unregistered Category = iota
	Standard
	Enumeration
	Other
	Derived
	Open
)

func (c Category) String() string {
	switch c {
	case Standard:
		return "standard"
	case Enumeration:
		return "enumeration"
	case Other:
		return "custom"
	case Derived:
		return "derived"
	case Open:
		return "open"
	default:
		return "unregistered"
	}
}
