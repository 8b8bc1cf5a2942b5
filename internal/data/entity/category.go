package entity

type UsageCategory struct {
	BaseSimple
	Name string `db:"name"`
}
