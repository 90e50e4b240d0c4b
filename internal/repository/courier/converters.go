package courier

import "dispatch/internal/entities"

func ToDomain(c *CourierDB) *entities.Courier {
	if c == nil {
		return nil
	}

	var location *entities.GeoPoint
	if c.Lat != nil && c.Lon != nil {
		location = &entities.GeoPoint{Lat: *c.Lat, Lon: *c.Lon}
	}

	return &entities.Courier{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Active:         c.Active,
		Online:         c.Online,
		Suspended:      c.Suspended,
		Location:       location,
		TotalAssigned:  c.TotalAssigned,
		TotalAccepted:  c.TotalAccepted,
		TotalCompleted: c.TotalCompleted,
		TotalCancelled: c.TotalCancelled,
		TotalFailed:    c.TotalFailed,
		Rating:         c.Rating,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
