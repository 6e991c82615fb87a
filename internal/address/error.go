package address

import "errors"

var (
	ErrAddressIDRequired = errors.New("address id is required")
	ErrNothingToUpdate   = errors.New("nothing to update")

	// -- Location cascade --
	ErrCityNotFound     = errors.New("city not found")
	ErrDistrictNotFound = errors.New("district not found in the selected city")
	ErrWardNotFound     = errors.New("ward not found in the selected district")
	ErrCityRequired     = errors.New("select a city first")
	ErrDistrictRequired = errors.New("select a district first")
)
