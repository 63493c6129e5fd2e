package domain

type Shop struct {
	Name        string
	Domain      string
	Currency    string
	MoneyFormat string
	CountryCode string
}
