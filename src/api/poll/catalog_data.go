package poll

import "github.com/greenlink-tr/greenlink/src/api/types"

// typeLabels maps event-request type codes from the submission form to the
// labels shown in the poll catalog.
var typeLabels = map[string]string{
	"sahil-temizligi": "Sahil Temizliği",
	"orman-temizligi": "Orman / Doğa Yürüyüşü & Temizlik",
	"atolye":          "Atölye / Eğitim",
	"soylesi":         "Söyleşi / Panel",
	"kampanya":        "İmza / Farkındalık Kampanyası",
	"diger":           "Önerilen etkinlik",
}

const defaultTypeLabel = "Önerilen etkinlik"

// TypeLabel resolves a type code, falling back to the generic label for
// unknown codes.
func TypeLabel(code string) string {
	if label, ok := typeLabels[code]; ok {
		return label
	}
	return defaultTypeLabel
}

// KnownType reports whether code is one of the submission form's dropdown
// values. Empty is allowed; the field is optional.
func KnownType(code string) bool {
	if code == "" {
		return true
	}
	_, ok := typeLabels[code]
	return ok
}

// PlannedEvents returns the fixed set of backend-planned events. Callers get
// a fresh slice; the catalog annotates items with tallies in place.
func PlannedEvents() []types.PollItem {
	return []types.PollItem{
		{
			ID:          "evt-1",
			Title:       "Kadıköy Sahil Temizliği",
			City:        "İstanbul",
			Date:        "14 Aralık 2025 – 10.00",
			Type:        "Sahil Temizliği",
			Description: "Eldiven ve çöp poşetlerini biz getiriyoruz. Sen sadece kendini ve enerjini getir.",
		},
		{
			ID:          "evt-2",
			Title:       "Şehirde Atıksız Yaşam Atölyesi",
			City:        "Ankara",
			Date:        "21 Aralık 2025 – 14.00",
			Type:        "Atölye / Eğitim",
			Description: "Evde, okulda ve işte atıksız yaşam pratikleri. Katılımcılara küçük bir rehber pdf gönderilecek.",
		},
		{
			ID:          "evt-3",
			Title:       "Deniz Kirliliği Farkındalık Yürüyüşü",
			City:        "İzmir",
			Date:        "28 Aralık 2025 – 16.00",
			Type:        "Farkındalık Kampanyası",
			Description: "Kısa bir yürüyüş ve basın açıklaması. Pankartlar için geri dönüştürülmüş karton kullanılacak.",
		},
	}
}
