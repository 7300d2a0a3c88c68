package db

import (
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/go-redis/redis"
)

var (
	ErrNotFound = errors.New("edit list not found")
)

// Store keeps JSON documents by key
type Store interface {
	Get(key string, dst interface{}) error
	Put(key string, val interface{}) error
}

type Options struct {
	Addr     string
	DB       int
	Password string

	// TTL is how long entries are kept, zero meaning forever
	TTL time.Duration
}

func NewClient(opt *Options) (*Client, error) {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Addr == "" {
		opt.Addr = "localhost:6379"
	}
	_, _, err := net.SplitHostPort(opt.Addr)
	if err != nil {
		opt.Addr = net.JoinHostPort(opt.Addr, "6379")
	}
	f := &Client{
		rc: redis.NewClient(&redis.Options{
			Addr:     opt.Addr,
			DB:       opt.DB,
			Password: opt.Password,
		}),
		ttl: opt.TTL,
	}
	return f, nil
}

// Client is a Store backed by redis
type Client struct {
	rc  *redis.Client
	ttl time.Duration
}

func (c *Client) Get(key string, dst interface{}) error {
	val, err := c.rc.Get(key).Result()
	if err == redis.Nil {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dst)
}

func (c *Client) Put(key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rc.Set(key, string(data), c.ttl).Err()
}

// Ping checks that redis is reachable
func (c *Client) Ping() error {
	return c.rc.Ping().Err()
}

// Close releases the connection pool
func (c *Client) Close() error {
	return c.rc.Close()
}
