package operator

// Operator is the front-office staff member driving a booking. Identity is
// owned upstream; this service only sees what the session token carries.
type Operator struct {
	id     int64
	siteID int64
	role   Role
}

func New(id, siteID int64, role Role) (*Operator, error) {
	if id <= 0 {
		return nil, ErrInvalidOperatorID
	}
	if siteID <= 0 {
		return nil, ErrInvalidSiteID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Operator{id: id, siteID: siteID, role: role}, nil
}

func (o *Operator) ID() int64     { return o.id }
func (o *Operator) SiteID() int64 { return o.siteID }
func (o *Operator) Role() Role    { return o.role }

func (o *Operator) CanSubmit() bool {
	return o.role.AtLeast(RoleOperator)
}
