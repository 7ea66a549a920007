// Package menu defines the two reply keyboards the bot shows.
package menu

// Button labels of the city actions keyboard. Incoming text is matched against them verbatim.
const (
	Info          = "Справка"
	Photo         = "Фото"
	Weather       = "Погода"
	ChooseAnother = "Выбрать другой город"
)

// Keyboard is a transport-neutral reply keyboard: rows of button labels.
type Keyboard [][]string

const cityColumns = 2

// Cities lays out city names two per row, keeping their order.
func Cities(names []string) Keyboard {
	kb := make(Keyboard, 0, (len(names)+cityColumns-1)/cityColumns)
	for i := 0; i < len(names); i += cityColumns {
		end := min(i+cityColumns, len(names))
		row := make([]string, end-i)
		copy(row, names[i:end])
		kb = append(kb, row)
	}
	return kb
}

// CityActions is the keyboard shown once a city has been selected.
func CityActions() Keyboard {
	return Keyboard{
		{Info, Photo, Weather},
		{ChooseAnother},
	}
}
