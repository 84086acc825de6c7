package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-identity/internal/adapter"
	"github.com/MKhiriev/go-identity/models"
)

var errUsage = errors.New("usage: client <version|register|login|profile|list|update|upload|avatar|delete|all> [args]")

// dispatch runs a single command and returns the value to print.
func dispatch(ctx context.Context, c adapter.IdentityClient, cmd string, args []string) (any, error) {
	switch cmd {
	case "version":
		return c.Version(ctx)

	case "register":
		// register <name> <nick> <email> <password> [role]
		if len(args) < 4 {
			return nil, fmt.Errorf("%w: register <name> <nick> <email> <password> [role]", errUsage)
		}
		in := models.RegisterInput{Name: args[0], Nick: args[1], Email: args[2], Password: args[3]}
		if len(args) > 4 {
			in.Role = args[4]
		}
		res, err := c.Register(ctx, in)
		if err != nil {
			return nil, err
		}
		if res.AlreadyExists {
			return map[string]string{"message": "user already exists"}, nil
		}
		return res, nil

	case "login":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: login <email> <password>", errUsage)
		}
		res, err := c.Login(ctx, models.Credentials{Email: args[0], Password: args[1]})
		if err != nil {
			return nil, err
		}
		return map[string]any{"user": res.User, "token": res.Token.String()}, nil

	case "profile":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: profile <id>", errUsage)
		}
		return c.Profile(ctx, args[0])

	case "list":
		page := 1
		if len(args) > 0 {
			p, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("%w: list [page]", errUsage)
			}
			page = p
		}
		return c.ListUsers(ctx, page)

	case "update":
		update, err := parseUpdate(args)
		if err != nil {
			return nil, err
		}
		return c.UpdateProfile(ctx, update)

	case "upload":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: upload <file>", errUsage)
		}
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return c.UploadAvatar(ctx, f.Name(), f)

	case "avatar":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: avatar <name> <output file>", errUsage)
		}
		data, err := c.Avatar(ctx, args[0])
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(args[1], data, 0o644); err != nil {
			return nil, err
		}
		return map[string]any{"file": args[1], "size": len(data)}, nil

	case "delete":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: delete <id>", errUsage)
		}
		return c.DeleteUser(ctx, args[0])

	case "all":
		return c.ListAllUsers(ctx)
	}

	return nil, errUsage
}

// parseUpdate turns key=value pairs into a profile update.
func parseUpdate(args []string) (models.ProfileUpdate, error) {
	var update models.ProfileUpdate
	if len(args) == 0 {
		return update, fmt.Errorf("%w: update key=value...", errUsage)
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return update, fmt.Errorf("%w: expected key=value, got %q", errUsage, arg)
		}
		switch key {
		case "name":
			update.Name = &value
		case "surname":
			update.Surname = &value
		case "bio":
			update.Bio = &value
		case "nick":
			update.Nick = &value
		case "email":
			update.Email = &value
		case "password":
			update.Password = &value
		default:
			return update, fmt.Errorf("%w: unknown field %q", errUsage, key)
		}
	}

	return update, nil
}
