package models

type Genre struct {
	ID   uint   `json:"-" gorm:"primarykey"`
	Name string `json:"name" gorm:"size:50;not null"`
	Slug string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
}

func (g *Genre) Fields() (name, slug string) {
	return g.Name, g.Slug
}

func (g *Genre) SetFields(name, slug string) {
	g.Name, g.Slug = name, slug
}
