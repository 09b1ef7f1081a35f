package models

// Read models for the public site. Every entity in them has already passed
// the ancestor-active check.

// NavbarMenuItem is one entry of the site navigation with its visible categories.
type NavbarMenuItem struct {
	NavbarCategory
	Categories []CategoryView `json:"categories"`
}

// ProductsPage backs /products.
type ProductsPage struct {
	Categories []CategoryView `json:"categories"`
	Products   []ProductView  `json:"products"`
	Pagination Pagination     `json:"pagination"`
}

// CategoryPage backs /products/:categorySlug.
type CategoryPage struct {
	Category      CategoryView      `json:"category"`
	SubCategories []SubCategoryView `json:"subcategories"`
	Products      []ProductView     `json:"products"`
	Pagination    Pagination        `json:"pagination"`
}

// SubCategoryPage backs /products/:categorySlug/:subCategorySlug.
type SubCategoryPage struct {
	SubCategory SubCategoryView `json:"subcategory"`
	Products    []ProductView   `json:"products"`
	Pagination  Pagination      `json:"pagination"`
}

// ProductPage backs /products/:categorySlug/:subCategorySlug/:productSlug.
type ProductPage struct {
	Product ProductView   `json:"product"`
	Related []ProductView `json:"related"`
}
