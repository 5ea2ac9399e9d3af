package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
)

// NewInvite generates an invite code in the local store. Anyone with the
// database file can do this; the gate exists to keep casual signups out,
// not as a security boundary.
func (a *App) NewInvite(ctx context.Context) error {
	kindStr, err := GetSimpleText(a.reader, "Kind (single/multi)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	kind := models.InviteSingle
	if kindStr == string(models.InviteMulti) {
		kind = models.InviteMulti
	}

	uses := 1
	if kind == models.InviteMulti {
		usesStr, err := GetSimpleText(a.reader, "Number of uses", a.out)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		if n, err := strconv.Atoi(usesStr); err == nil {
			uses = n
		}
	}

	daysStr, err := GetSimpleText(a.reader, "Expires in days (0 = never)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	days, _ := strconv.Atoi(daysStr)

	prefix, err := GetSimpleText(a.reader, "Prefix (optional)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	inv, err := a.inviteService.Generate(ctx, kind, prefix, uses, days)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("Invite code: %s (%s, %d use(s))", inv.Code, inv.Kind, inv.Uses))
	return nil
}

func (a *App) ListInvites(ctx context.Context) error {
	list, err := a.inviteService.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No invite codes yet")
		return nil
	}

	for _, inv := range list {
		expires := "never"
		if !inv.ExpiresAt.IsZero() {
			expires = inv.ExpiresAt.Format("2006-01-02")
		}
		printlnFn(fmt.Sprintf("%s  %s  uses %d/%d  expires %s", inv.Code, inv.Kind, inv.Uses, inv.MaxUses, expires))
	}
	return nil
}

// PurgeInvites drops expired invite codes from the local store.
func (a *App) PurgeInvites(ctx context.Context) error {
	n, err := a.inviteService.Purge(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("Purged %d expired invite(s)", n))
	return nil
}
