// Command docserver is the reference collaboration server described in
// SPEC_FULL.md's domain stack: a gin HTTP/WebSocket process that hosts
// document.Controller instances behind JWT auth, republishes their
// change streams to Kafka, and seeds each newly opened document from its
// latest MySQL snapshot (it does not write snapshots), with Redis
// tracking who currently has each document open. Modeled directly on
// the teacher's collab_server/main.go and gateway/main.go.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/IBM/sarama"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	redis "github.com/redis/go-redis/v9"

	"docengine/authmw"
	"docengine/config"
	"docengine/host"
	"docengine/presence"
	"docengine/store"
	"docengine/syncbus"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("docserver: config: %v", err)
	}

	db, err := sql.Open("mysql", cfg.Mysql.DSN)
	if err != nil {
		log.Fatalf("docserver: mysql open: %v", err)
	}
	defer db.Close()

	documentStore := store.NewDocumentStore(db)
	snapshotStore, err := store.OpenSnapshotStore(cfg.Mysql.DSN)
	if err != nil {
		log.Fatalf("docserver: snapshot store: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("docserver: redis ping: %v", err)
	}
	defer rdb.Close()
	presenceCache := presence.NewRedisCache(rdb)

	kafkaCfg := sarama.NewConfig()
	kafkaCfg.Producer.Return.Successes = true
	kafkaCfg.Producer.RequiredAcks = sarama.WaitForLocal
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, kafkaCfg)
	if err != nil {
		log.Fatalf("docserver: kafka producer: %v", err)
	}
	defer producer.Close()

	sem := syncbus.NewSemaphoreControl()
	dispatcher := syncbus.NewKafkaDispatcher(producer, cfg.Kafka.Topic, sem, syncbus.DefaultDispatcherOptions())
	publisher := syncbus.NewKafkaPublisher(dispatcher)

	loadDoc := func(docID string) ([]byte, error) {
		d, _, err := snapshotStore.Latest(context.Background(), docID)
		if err != nil {
			return nil, err
		}
		return d.ToJSON()
	}
	hub := host.NewHub(loadDoc, func(docID string, r *host.Room) {
		r.Controller().Subscribe(publisher.Subscriber(docID, "system"))
	})

	signer := authmw.NewSigner(cfg.Auth.Secret)
	server := host.NewServer(hub, presenceCache)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.Default())

	r.GET("/documents/:title", func(c *gin.Context) {
		docID, err := documentStore.GetDocumentID(c.Request.Context(), c.Param("title"))
		if err != nil {
			c.JSON(404, gin.H{"error": "document not found"})
			return
		}
		c.JSON(200, gin.H{"docId": docID})
	})

	collab := r.Group("/collab")
	collab.Use(authmw.Middleware(signer))
	server.Register(collab)

	port := cfg.Running.Port
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatalf("docserver: serve: %v", err)
	}
}
