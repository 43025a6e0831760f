package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// AuthError indicates that authentication failed for an account.
type AuthError struct {
	Account string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Account, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Client wraps go-imap v2 for one account.
type Client struct {
	host     string
	port     string
	username string
	password string
	tls      bool
}

// NewClient creates a new IMAP client configuration.
func NewClient(host, port, username, password string, tls bool) *Client {
	return &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
		tls:      tls,
	}
}

// Connect establishes a connection to the IMAP server, authenticates,
// and returns the connected client. The caller is responsible for
// calling Logout on the returned client.
func (c *Client) Connect(_ context.Context) (*imapclient.Client, error) {
	addr := c.host + ":" + c.port

	var client *imapclient.Client
	var err error

	if c.tls {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.username, c.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &AuthError{
			Account: c.username + "@" + c.host,
			Message: fmt.Sprintf("authentication failed: %v", err),
		}
	}

	return client, nil
}

// List connects and runs LIST with the given pattern, asking the
// server for subscription, children and message count data in the
// same round trip.
func (c *Client) List(ctx context.Context, pattern string, subscribedOnly bool) ([]*imap.ListData, error) {
	client, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	opts := &imap.ListOptions{
		SelectSubscribed: subscribedOnly,
		ReturnSubscribed: true,
		ReturnChildren:   true,
		ReturnStatus: &imap.StatusOptions{
			NumMessages: true,
			NumUnseen:   true,
		},
	}

	listCmd := client.List("", pattern, opts)
	data, err := listCmd.Collect()
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", pattern, err)
	}
	return data, nil
}

// Delim asks the server for its hierarchy delimiter.
func (c *Client) Delim(ctx context.Context) (rune, error) {
	client, err := c.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = client.Logout().Wait() }()

	data, err := client.List("", "", nil).Collect()
	if err != nil {
		return 0, fmt.Errorf("querying hierarchy delimiter: %w", err)
	}
	if len(data) == 0 {
		return 0, nil
	}
	return data[0].Delim, nil
}

// Create makes a new mailbox on the server.
func (c *Client) Create(ctx context.Context, mailbox string) error {
	client, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	if err := client.Create(mailbox, nil).Wait(); err != nil {
		return fmt.Errorf("creating mailbox %q: %w", mailbox, err)
	}
	return nil
}

// Delete removes a mailbox from the server.
func (c *Client) Delete(ctx context.Context, mailbox string) error {
	client, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	if err := client.Delete(mailbox).Wait(); err != nil {
		return fmt.Errorf("deleting mailbox %q: %w", mailbox, err)
	}
	return nil
}

// Rename changes a mailbox name on the server.
func (c *Client) Rename(ctx context.Context, mailbox, newName string) error {
	client, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	if err := client.Rename(mailbox, newName, nil).Wait(); err != nil {
		return fmt.Errorf("renaming mailbox %q to %q: %w", mailbox, newName, err)
	}
	return nil
}

// Subscribe adds or removes a mailbox from the subscription list.
func (c *Client) Subscribe(ctx context.Context, mailbox string, subscribe bool) error {
	client, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	if subscribe {
		err = client.Subscribe(mailbox).Wait()
	} else {
		err = client.Unsubscribe(mailbox).Wait()
	}
	if err != nil {
		return fmt.Errorf("changing subscription of %q: %w", mailbox, err)
	}
	return nil
}
