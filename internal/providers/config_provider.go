package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"doorbelld/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; real environment variables win over it
	_ = godotenv.Load(filepath.Join(filepath.Dir(flags.ConfigPath), ".env"))

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)

	v.BindEnv("logger.level", "DOORBELL_LOG_LEVEL")
	v.BindEnv("store.root", "DOORBELL_STORE_ROOT")
	v.BindEnv("store.timezone", "DOORBELL_TIMEZONE")
	v.BindEnv("media.baseUrl", "HOST")
	v.BindEnv("camera.username", "DOORBELL_CAMERA_USERNAME")
	v.BindEnv("camera.password", "DOORBELL_CAMERA_PASSWORD")
	v.BindEnv("mqtt.username", "DOORBELL_MQTT_USERNAME")
	v.BindEnv("mqtt.password", "DOORBELL_MQTT_PASSWORD")
	v.BindEnv("mirror.accessKey", "DOORBELL_MINIO_ACCESS_KEY")
	v.BindEnv("mirror.secretKey", "DOORBELL_MINIO_SECRET_KEY")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "DoorbellEventDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("store.root", "./snapshots")
	v.SetDefault("store.timezone", "Local")
	v.SetDefault("store.cursorFile", "./data.json")
	v.SetDefault("media.mode", "url")
	v.SetDefault("capture.snapshots", 1)
	v.SetDefault("capture.snapshotInterval", "4s")
	v.SetDefault("capture.snapshotTimeout", "15s")
	v.SetDefault("capture.videoEnabled", true)
	v.SetDefault("capture.videoDuration", "30s")
	v.SetDefault("capture.videoTimeout", "90s")
	v.SetDefault("capture.queueSize", 64)
	v.SetDefault("camera.timeout", "20s")
	v.SetDefault("motion.pollInterval", "5s")
	v.SetDefault("motion.kind", "motion")
	v.SetDefault("motion.state", "person_detected")
	v.SetDefault("mqtt.clientId", "doorbelld")
	v.SetDefault("mqtt.motionTopic", "doorbell/motion")
	v.SetDefault("mqtt.eventTopic", "doorbell/events")
	v.SetDefault("subscription.feePerMonth", 3.99)
	v.SetDefault("cache.ttl", "30s")
}
