package seed

import (
	"sukaikan/internal/batch"
	"sukaikan/internal/product"
)

var Products = []product.Product{
	{
		ID:          "kembung-fillet",
		Name:        "Ikan Kembung Fillet",
		Category:    "ikan-laut",
		PricePerKg:  48000,
		SeasonLabel: "Fresh Minggu Ini",
		Size:        "Sedang, 8–10 ekor/kg",
		Texture:     "Daging lembut, cocok untuk goreng dan bakar",
	},
	{
		ID:          "tongkol-segar",
		Name:        "Ikan Tongkol Segar",
		Category:    "ikan-laut",
		PricePerKg:  42000,
		SeasonLabel: "Fresh Minggu Ini",
		Size:        "Sedang, 3–4 ekor/kg",
		Texture:     "Padat dan gurih, cocok untuk balado",
	},
	{
		ID:         "udang-vaname",
		Name:       "Udang Vaname",
		Category:   "udang-cumi",
		PricePerKg: 78000,
		Size:       "Sedang, 50–60 ekor/kg",
		Texture:    "Renya, manis, cocok untuk tumis dan goreng tepung",
	},
	{
		ID:         "cumi-tube",
		Name:       "Cumi Tube",
		Category:   "udang-cumi",
		PricePerKg: 85000,
		Size:       "Sedang, 10–15 potong/kg",
		Texture:    "Empuk jika dimasak singkat, cocok untuk calamari",
	},
	{
		ID:          "kerang-hijau",
		Name:        "Kerang Hijau",
		Category:    "kerang",
		PricePerKg:  28000,
		SeasonLabel: "Fresh Minggu Ini",
		Size:        "Campur, 60–80 butir/kg",
		Texture:     "Kenyal, gurih, cocok untuk rebus dan tumis",
	},
}

var Recommendations = []product.Recommendation{
	{ProductID: "kembung-fillet", Name: "Ikan Kembung Goreng Kunyit", Estimate: "20 menit"},
	{ProductID: "kembung-fillet", Name: "Kembung Bakar Sambal Matah", Estimate: "30 menit"},
	{ProductID: "tongkol-segar", Name: "Tongkol Balado Rumahan", Estimate: "35 menit"},
	{ProductID: "tongkol-segar", Name: "Tongkol Suwir Pedas", Estimate: "25 menit"},
	{ProductID: "udang-vaname", Name: "Udang Saus Padang", Estimate: "30 menit"},
	{ProductID: "udang-vaname", Name: "Udang Goreng Tepung Krispi", Estimate: "25 menit"},
	{ProductID: "cumi-tube", Name: "Cumi Goreng Tepung", Estimate: "20 menit"},
	{ProductID: "cumi-tube", Name: "Cumi Saus Tiram", Estimate: "25 menit"},
	{ProductID: "kerang-hijau", Name: "Kerang Hijau Rebus Bumbu Kencur", Estimate: "25 menit"},
	{ProductID: "kerang-hijau", Name: "Kerang Hijau Saus Padang", Estimate: "30 menit"},
}

// InitialBatch has a countdown but no deadline; the first read derives one.
var InitialBatch = batch.Batch{
	Name:         batch.Fallback.Name,
	ShipmentDate: batch.Fallback.ShipmentDate,
	Status:       batch.Fallback.Status,
	Countdown:    batch.Fallback.Countdown,
	IsActive:     true,
}
