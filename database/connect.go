package database

import (
	"fmt"
	"log"
	"strconv"

	"gastro_vision/config"
	"gastro_vision/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	var err error
	p := config.Config("DB_PORT")
	if p == "" {
		p = "5432"
	}
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	log.Println("Connection Opened to Database")
	if err := DB.AutoMigrate(
		&model.Table{},
		&model.Waiter{},
		&model.Food{},
		&model.Order{},
	); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}
	log.Println("Database Migrated")
	return DB
}
