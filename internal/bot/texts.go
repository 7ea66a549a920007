package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/travelbot/internal/catalog"
	"github.com/m3rciful/travelbot/internal/weather"
)

const (
	textBye             = "До свидания! ✈️"
	textChooseCity      = "Выберите город:"
	textSelectCityFirst = "⚠️ Сначала выберите город из списка:"
	textLoadingPhotos   = "📸 Загружаю фотографии..."
	textPhotosFailed    = "⚠️ Не удалось загрузить фотографии. Попробуйте позже."
	textWeatherOffline  = "⚠️ Нет соединения с сервисом погоды."
	textWeatherBadData  = "⚠️ Ошибка получения данных о погоде."
	textUnknownError    = "⚠️ Неизвестная ошибка."
)

// UnknownErrorText answers updates whose handling failed unexpectedly.
const UnknownErrorText = textUnknownError

// reactionPool holds the replies to user photos. It must keep at least reactionCount entries.
var reactionPool = []string{
	"Классное фото 📸",
	"Красиво!",
	"Интересный кадр 😎",
	"Отличное фото!",
	"Мне нравится!",
}

const reactionCount = 3

func welcomeText(name string) string {
	greeting := "Привет! 👋"
	if name = strings.TrimSpace(name); name != "" {
		greeting = fmt.Sprintf("Привет, %s! 👋", name)
	}
	return greeting + "\n" +
		"Я — Информер путешественника 🌍\n" +
		"Напиши /help чтобы увидеть список городов"
}

func helpText(names []string) string {
	return "Доступные города:\n" + strings.Join(names, "\n") + "\n\n" +
		"Выберите город из меню ниже или введите название:"
}

func selectedText(city string) string {
	return fmt.Sprintf("✅ Выбран город: %s\n\nВыберите действие:", city)
}

func notFoundText(input string) string {
	return fmt.Sprintf("❌ Город '%s' не найден в базе.\n\n"+
		"Пожалуйста, выберите город из списка ниже или введите название правильно:", input)
}

func infoText(c catalog.City) string {
	return fmt.Sprintf("🏙 %s\n🌍 Страна: %s\n📍 Широта: %s\n📍 Долгота: %s\n📐 Площадь: %s\n👥 Население: %s",
		c.Name, c.Country, formatCoord(c.Latitude), formatCoord(c.Longitude), c.Area, c.Population)
}

// formatCoord prints the shortest decimal form that round-trips, e.g. -74.006.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func photoCaption(city, url string) string {
	return fmt.Sprintf("🌆 %s\n🔗 %s", city, url)
}

func weatherText(city string, r weather.Report) string {
	return fmt.Sprintf("🌤 Погода в %s\n🕒 %s\n🌡 %s°C / %s°F\n☁️ %s", city, r.LocalTime, r.TempC, r.TempF, r.Condition)
}
