// Command passwd prompts for the admin password and prints its bcrypt hash
// for the AdminPasswordHash config setting.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))

	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	fmt.Println("Repeat password")
	repeat, err := term.ReadPassword(int(os.Stdin.Fd()))

	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if string(password) != string(repeat) {
		fmt.Println("passwords do not match")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	fmt.Println(string(hash))

}
