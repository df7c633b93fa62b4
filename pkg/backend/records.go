package backend

// MenuItem is a persisted dish on the owner's menu. The backend assigns the
// ID on create; IsAvailable is server-owned and the value returned by the
// backend is always authoritative.
type MenuItem struct {
	ID            string   `json:"_id"`
	DishName      string   `json:"dishName"`
	Category      string   `json:"category"`
	Description   string   `json:"description,omitempty"`
	HalfPrice     *float64 `json:"halfPrice,omitempty"`
	FullPrice     *float64 `json:"fullPrice,omitempty"`
	IsChefSpecial bool     `json:"isChefSpecial"`
	IsAvailable   bool     `json:"isAvailable"`
}

// CafeProfile is the café metadata edited on the dashboard.
type CafeProfile struct {
	CafeName    string `json:"cafename"`
	PhoneNo     string `json:"phoneNo"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// OwnerProfile is the account record of the signed-in owner. Read-only.
type OwnerProfile struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// PublicCafe is a café entry from the public directory.
type PublicCafe struct {
	ID          string `json:"_id"`
	CafeName    string `json:"cafename"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
}

// PublicMenuItem is a dish as served on the public menu.
type PublicMenuItem struct {
	ID            string   `json:"_id"`
	DishName      string   `json:"dishName"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price,omitempty"`
	HalfPrice     *float64 `json:"halfPrice,omitempty"`
	FullPrice     *float64 `json:"fullPrice,omitempty"`
	IsChefSpecial bool     `json:"isChefSpecial,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
}

// CategoryGroup is one public-menu section.
type CategoryGroup struct {
	Category string           `json:"category"`
	Items    []PublicMenuItem `json:"items"`
}

// CreateItemInput carries the fields needed to create a menu item.
type CreateItemInput struct {
	DishName      string
	Category      string
	Description   string
	IsChefSpecial bool
	HalfPrice     *float64
	FullPrice     *float64
}

// UpdateItemInput carries the fields sent on item update. Unlike create, no
// legacy single price is included; only the half/full pair is sent.
type UpdateItemInput struct {
	DishName      string
	Category      string
	Description   string
	IsChefSpecial bool
	HalfPrice     *float64
	FullPrice     *float64
}
