package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
)

// Register creates a local account. Signup is invite-gated: the user must
// present a valid, unexpired code with uses remaining.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	code, err := GetSimpleText(a.reader, "Enter invite code (or paste an invite link)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	err = a.authService.Register(ctx, username, password, code)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			log.Println("Fill both username and password")
		case errors.Is(err, common.ErrInviteInvalid):
			log.Println("Invalid invite code")
		case errors.Is(err, common.ErrInviteExpired):
			log.Println("Invite code has expired")
		case errors.Is(err, common.ErrInviteExhausted):
			log.Println("Invite code has no uses left")
		case errors.Is(err, common.ErrorAlreadyExists):
			log.Println("Username already taken")
		default:
			log.Printf("Registration failed: %s", err.Error())
		}
		return err
	}

	log.Println("Account created, you can login now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	session, err := a.authService.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			log.Println("Incorrect username or password")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.session = session
	log.Printf("Welcome, %s!", session.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	log.Println("Logged out")
	return nil
}
