package service

import (
	"sort"
	"strings"
	"time"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/util"
)

type rankedRestroom struct {
	restroom entity.Restroom
	distance float64
}

// rankNearby фильтрует кандидатов по радиусу, открытости и обязательным
// удобствам, затем сортирует по составному ключу: рейтинг по убыванию,
// посещения по убыванию, расстояние по возрастанию. Сортировка стабильна,
// дальнейшие ничьи сохраняют входной порядок. limit усекает выдачу, только
// когда он задан и положителен.
func rankNearby(candidates []entity.Restroom, lat, lng, radiusMeters float64,
	openNow *bool, amenities map[string]struct{}, limit *int, now time.Time) []entity.Restroom {

	ranked := make([]rankedRestroom, 0, len(candidates))
	for _, r := range candidates {
		d := util.DistanceMeters(lat, lng, r.Latitude, r.Longitude)
		if d > radiusMeters {
			continue
		}
		// Исторически фильтр срабатывает при любом непустом openNow:
		// даже openNow=false оставляет только открытые. Запрос "только
		// закрытые" не поддерживается.
		if openNow != nil && !util.IsOpen(hoursOf(r), now) {
			continue
		}
		if len(amenities) > 0 && !hasAllAmenities(r.Amenities, amenities) {
			continue
		}
		ranked = append(ranked, rankedRestroom{restroom: r, distance: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].restroom.AvgRating != ranked[j].restroom.AvgRating {
			return ranked[i].restroom.AvgRating > ranked[j].restroom.AvgRating
		}
		if ranked[i].restroom.VisitCount != ranked[j].restroom.VisitCount {
			return ranked[i].restroom.VisitCount > ranked[j].restroom.VisitCount
		}
		return ranked[i].distance < ranked[j].distance
	})

	result := make([]entity.Restroom, 0, len(ranked))
	for _, rr := range ranked {
		result = append(result, rr.restroom)
	}

	if limit != nil && *limit > 0 && len(result) > *limit {
		result = result[:*limit]
	}
	return result
}

func hoursOf(r entity.Restroom) string {
	if r.Hours == nil {
		return ""
	}
	return *r.Hours
}

// hasAllAmenities проверяет, что туалет покрывает все запрошенные удобства.
// Сравнение точное и регистрозависимое; пустой список удобств никогда не
// проходит непустой фильтр.
func hasAllAmenities(have []string, want map[string]struct{}) bool {
	if len(have) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		a = strings.TrimSpace(a)
		if a != "" {
			set[a] = struct{}{}
		}
	}
	for a := range want {
		if _, ok := set[a]; !ok {
			return false
		}
	}
	return true
}

// amenitySet строит множество фильтра из списка, отбрасывая пустые элементы
func amenitySet(amenities []string) map[string]struct{} {
	if len(amenities) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(amenities))
	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

// normalizeAmenities чистит список удобств при создании: обрезает пробелы,
// убирает пустые и дубликаты, сохраняя порядок
func normalizeAmenities(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
