package poi

import (
	"time"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
)

// seedCatalog returns the fixed set of campus POIs registered at bootstrap.
// Coordinates cover the main campus quad.
func seedCatalog() []*model.POI {
	now := time.Now()
	mk := func(id, name string, cat model.POICategory, lat, lng float64) *model.POI {
		return &model.POI{
			ID:        id,
			Name:      name,
			Category:  cat,
			Location:  model.Coordinate{Lat: lat, Lng: lng},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return []*model.POI{
		mk("main-block", "Main Academic Block", model.POICategoryAcademic, 16.4352, 80.5102),
		mk("eng-block", "Engineering Block", model.POICategoryAcademic, 16.4361, 80.5110),
		mk("central-library", "Central Library", model.POICategoryLibrary, 16.4347, 80.5095),
		mk("food-court", "Food Court", model.POICategoryDining, 16.4340, 80.5108),
		mk("north-canteen", "North Canteen", model.POICategoryDining, 16.4368, 80.5099),
		mk("sports-complex", "Sports Complex", model.POICategorySports, 16.4330, 80.5120),
		mk("hostel-a", "Hostel Block A", model.POICategoryDorm, 16.4375, 80.5115),
		mk("hostel-b", "Hostel Block B", model.POICategoryDorm, 16.4380, 80.5122),
		mk("health-center", "Health Center", model.POICategoryMedical, 16.4344, 80.5130),
		mk("main-parking", "Main Gate Parking", model.POICategoryParking, 16.4325, 80.5090),
		mk("clock-tower", "Clock Tower", model.POICategoryLandmark, 16.4355, 80.5107),
	}
}
