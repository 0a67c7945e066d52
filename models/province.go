package models

// Provinces are the Canadian province and territory codes accepted for users and restaurants
var Provinces = []string{"AB", "BC", "MB", "NB", "NL", "NT", "NS", "NU", "ON", "PE", "QC", "SK", "YT"}

func IsProvince(code string) bool {
	for _, p := range Provinces {
		if p == code {
			return true
		}
	}
	return false
}
