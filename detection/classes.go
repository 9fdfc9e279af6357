package detection

import "strings"

// FoodClasses là 101 nhãn của bộ Food-101 mà model phân loại trả về.
var FoodClasses = []string{
	"apple_pie", "baby_back_ribs", "baklava", "beef_carpaccio", "beef_tartare", "beet_salad", "beignets",
	"bibimbap", "bread_pudding", "breakfast_burrito", "bruschetta", "caesar_salad", "cannoli", "caprese_salad",
	"carrot_cake", "ceviche", "cheesecake", "cheese_plate", "chicken_curry", "chicken_quesadilla", "chicken_wings",
	"chocolate_cake", "chocolate_mousse", "churros", "clam_chowder", "club_sandwich", "crab_cakes", "creme_brulee",
	"croque_madame", "cup_cakes", "deviled_eggs", "donuts", "dumplings", "edamame", "eggs_benedict", "escargots",
	"falafel", "filet_mignon", "fish_and_chips", "foie_gras", "french_fries", "french_onion_soup", "french_toast",
	"fried_calamari", "fried_rice", "frozen_yogurt", "garlic_bread", "gnocchi", "greek_salad", "grilled_cheese_sandwich",
	"grilled_salmon", "guacamole", "gyoza", "hamburger", "hot_and_sour_soup", "hot_dog", "huevos_rancheros", "hummus",
	"ice_cream", "lasagna", "lobster_bisque", "lobster_roll_sandwich", "macaroni_and_cheese", "macarons", "miso_soup",
	"mussels", "nachos", "omelette", "onion_rings", "oysters", "pad_thai", "paella", "pancakes", "panna_cotta",
	"peking_duck", "pho", "pizza", "pork_chop", "poutine", "prime_rib", "pulled_pork_sandwich", "ramen", "ravioli",
	"red_velvet_cake", "risotto", "samosa", "sashimi", "scallops", "seaweed_salad", "shrimp_and_grits", "spaghetti_bolognese",
	"spaghetti_carbonara", "spring_rolls", "steak", "strawberry_shortcake", "sushi", "tacos", "takoyaki", "tiramisu",
	"tuna_tartare", "waffles",
}

var knownClasses = func() map[string]bool {
	m := make(map[string]bool, len(FoodClasses))
	for _, c := range FoodClasses {
		m[c] = true
	}
	return m
}()

func IsKnownClass(label string) bool {
	return knownClasses[label]
}

// Category xếp nhóm món theo tên nhãn.
func Category(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "salad"):
		return "salad"
	case strings.Contains(name, "soup"):
		return "soup"
	case strings.Contains(name, "cake"), strings.Contains(name, "ice_cream"),
		strings.Contains(name, "baklava"), strings.Contains(name, "tiramisu"):
		return "dessert"
	case strings.Contains(name, "grill"), strings.Contains(name, "steak"), strings.Contains(name, "kebab"),
		strings.Contains(name, "ribs"), strings.Contains(name, "chop"):
		return "grill"
	case strings.Contains(name, "curry"), strings.Contains(name, "ramen"), strings.Contains(name, "bolognese"):
		return "stew"
	}
	return "other"
}
