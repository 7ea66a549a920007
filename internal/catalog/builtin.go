package catalog

// Builtin returns the compiled-in city table.
func Builtin() []City {
	return []City{
		{
			Name:       "Париж",
			Country:    "Франция",
			Latitude:   48.8566,
			Longitude:  2.3522,
			Area:       "105 км²",
			Population: "2.1 млн",
			PhotoURLs: []string{
				"https://upload.wikimedia.org/wikipedia/commons/thumb/4/4b/La_Tour_Eiffel_vue_de_la_Tour_Saint-Jacques%2C_Paris_ao%C3%BBt_2014_%282%29.jpg/800px-La_Tour_Eiffel_vue_de_la_Tour_Saint-Jacques%2C_Paris_ao%C3%BBt_2014_%282%29.jpg",
			},
		},
		{
			Name:       "Лондон",
			Country:    "Великобритания",
			Latitude:   51.5074,
			Longitude:  -0.1278,
			Area:       "1572 км²",
			Population: "9 млн",
			PhotoURLs: []string{
				"https://upload.wikimedia.org/wikipedia/commons/thumb/6/67/London_Skyline_%28125508655%29.jpeg/800px-London_Skyline_%28125508655%29.jpeg",
			},
		},
		{
			Name:       "Токио",
			Country:    "Япония",
			Latitude:   35.6895,
			Longitude:  139.6917,
			Area:       "2194 км²",
			Population: "14 млн",
			PhotoURLs: []string{
				"https://upload.wikimedia.org/wikipedia/commons/thumb/b/b2/Skyscrapers_of_Shinjuku_2009_January.jpg/800px-Skyscrapers_of_Shinjuku_2009_January.jpg",
			},
		},
		{
			Name:       "Рим",
			Country:    "Италия",
			Latitude:   41.9028,
			Longitude:  12.4964,
			Area:       "1285 км²",
			Population: "2.8 млн",
			PhotoURLs: []string{
				"https://upload.wikimedia.org/wikipedia/commons/thumb/5/53/Colosseum_in_Rome%2C_Italy_-_April_2007.jpg/800px-Colosseum_in_Rome%2C_Italy_-_April_2007.jpg",
			},
		},
		{
			Name:       "Нью-Йорк",
			Country:    "США",
			Latitude:   40.7128,
			Longitude:  -74.0060,
			Area:       "783 км²",
			Population: "8.4 млн",
			PhotoURLs: []string{
				"https://upload.wikimedia.org/wikipedia/commons/thumb/7/7a/View_of_Empire_State_Building_from_Rockefeller_Center_New_York_City_dllu_%28cropped%29.jpg/800px-View_of_Empire_State_Building_from_Rockefeller_Center_New_York_City_dllu_%28cropped%29.jpg",
			},
		},
	}
}
