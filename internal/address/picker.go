package address

import "strings"

// Picker holds a city → district → ward selection. Choosing a parent clears
// every child below it.
type Picker struct {
	City     *Location
	District *Location
	Ward     *Location
}

func (p *Picker) SelectCity(c Location) {
	if p.City != nil && p.City.ID == c.ID {
		return
	}
	p.City = &c
	p.District = nil
	p.Ward = nil
}

func (p *Picker) SelectDistrict(d Location) error {
	if p.City == nil {
		return ErrCityRequired
	}
	if p.District != nil && p.District.ID == d.ID {
		return nil
	}
	p.District = &d
	p.Ward = nil
	return nil
}

func (p *Picker) SelectWard(w Location) error {
	if p.District == nil {
		return ErrDistrictRequired
	}
	p.Ward = &w
	return nil
}

func (p *Picker) Complete() bool {
	return p.City != nil && p.District != nil && p.Ward != nil
}

// Input builds the create body for a complete selection.
func (p *Picker) Input(title, street, phone string) CreateInput {
	in := CreateInput{
		Title:       strings.TrimSpace(title),
		PhoneNumber: strings.TrimSpace(phone),
	}
	if in.Title == "" {
		in.Title = DefaultTitle
	}

	var ward, district, city string
	if p.Ward != nil {
		in.WardID, ward = p.Ward.ID, p.Ward.Name
	}
	if p.District != nil {
		in.DistrictID, district = p.District.ID, p.District.Name
	}
	if p.City != nil {
		in.CityID, city = p.City.ID, p.City.Name
	}
	in.WardName, in.DistrictName, in.CityName = ward, district, city
	in.Address = ComposeFull(street, ward, district, city)
	return in
}

// ComposeFull joins the non-empty parts with ", ".
func ComposeFull(street, ward, district, city string) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{street, ward, district, city} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func findLocation(list []Location, id int) (Location, bool) {
	for _, l := range list {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}
