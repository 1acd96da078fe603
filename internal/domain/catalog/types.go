package catalog

// Category is the fixed enumeration of catalog sections. Selections are
// keyed by category first, then by item id.
type Category string

const (
	CategoryRestaurants    Category = "restaurants"
	CategoryHomelyFoods    Category = "homelyFoods"
	CategoryOtherServices  Category = "otherServices"
	CategoryRoomServices   Category = "roomServices"
	CategoryRides          Category = "rides"
	CategoryEntertainments Category = "entertainments"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryRestaurants,
		CategoryHomelyFoods,
		CategoryOtherServices,
		CategoryRoomServices,
		CategoryRides,
		CategoryEntertainments,
	}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryRestaurants, CategoryHomelyFoods, CategoryOtherServices,
		CategoryRoomServices, CategoryRides, CategoryEntertainments:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}
