package database

import (
	"context"
	"errors"
	"log"

	"gastro_vision/detection"
	"gastro_vision/model"
	"gastro_vision/store"
	"gastro_vision/utils"

	"github.com/gosimple/slug"
)

const DefaultFoodPrice = 100

// SeedFoodCatalog thêm 101 món Food-101 còn thiếu, giá mặc định 100.
func SeedFoodCatalog(ctx context.Context, s store.Store) (int, error) {
	added := 0
	for _, name := range detection.FoodClasses {
		_, err := s.FindFoodByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, utils.ErrNotFound) {
			return added, err
		}

		food := model.Food{
			FoodId:   slug.Make(name),
			Name:     name,
			Category: detection.Category(name),
			Price:    DefaultFoodPrice,
		}
		if err := s.CreateFood(ctx, &food); err != nil {
			log.Println("failed to seed food:", name, "error:", err)
			continue
		}
		added++
	}
	log.Printf("Food catalog seeded: %d added", added)
	return added, nil
}
