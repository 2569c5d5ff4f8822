package x

import "github.com/swapsies/swapsies/errors"

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be written to and loaded from the store. Unmarshal almost
// always needs a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}

// MarshalValidater is something that can be validated and serialized.
type MarshalValidater interface {
	Marshaller
	Validater
}

// MarshalValid returns the serialized form of obj. Invalid objects are
// never serialized.
func MarshalValid(obj MarshalValidater) ([]byte, error) {
	if err := obj.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	raw, err := obj.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal")
	}
	return raw, nil
}
