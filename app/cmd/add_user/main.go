package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/database"
	"github.com/Mendozape/crud-sub000/app/models"
	"github.com/Mendozape/crud-sub000/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "email address for the new user")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	role := flag.String("role", "admin", "role to assign")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-first-name ...] [-last-name ...] [-role ...]")
		os.Exit(1)
	}

	if _, err := config.Load(""); err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitDB(); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	db := config.GetDB()
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  hash,
	}

	if err := database.CreateUser(db, user, *role); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n", user.FirstName, user.LastName, user.Email, *role)
}
