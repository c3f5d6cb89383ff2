package models

// Category категория транспортного средства.
// HasDisplacementField приходит из справочника и определяет, нужен ли объём/мощность двигателя.
type Category struct {
	ID                   string `yaml:"id" json:"id"`
	Name                 string `yaml:"name" json:"name"`
	NameEn               string `yaml:"name_en" json:"name_en"`
	HasDisplacementField bool   `yaml:"has_cc_range" json:"has_cc_range"`
}

// RegType тип регистрации (частный, общественный, государственный...).
type RegType struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	NameEn string `yaml:"name_en" json:"name_en"`
}

// Catalog статический справочник для выпадающих списков формы.
type Catalog struct {
	RegTypes   []RegType  `yaml:"reg_types" json:"reg_types"`
	Categories []Category `yaml:"categories" json:"categories"`
}

// FindCategory ищет категорию по идентификатору.
func (c *Catalog) FindCategory(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// FindRegType ищет тип регистрации по идентификатору.
func (c *Catalog) FindRegType(id string) (RegType, bool) {
	for _, rt := range c.RegTypes {
		if rt.ID == id {
			return rt, true
		}
	}
	return RegType{}, false
}
