package models

type Category struct {
	ID   uint   `json:"-" gorm:"primarykey"`
	Name string `json:"name" gorm:"size:200;not null"`
	Slug string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
}

func (c *Category) Fields() (name, slug string) {
	return c.Name, c.Slug
}

func (c *Category) SetFields(name, slug string) {
	c.Name, c.Slug = name, slug
}
