package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints an INSERT for a bootstrap admin account. Role requests can only be
// approved by an admin, so the first admin has to be seeded by hand.
func main() {
	if len(os.Args) < 4 {
		log.Fatal("Usage: go run main.go <name> <email> <password>")
	}

	name, email, password := os.Args[1], os.Args[2], os.Args[3]

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Printf(
		"INSERT INTO users (email, name, photo, role, status, password_hash)\nVALUES ('%s', '%s', '', 'admin', 'active', '%s');\n",
		email, name, string(hashed),
	)
}
