package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

// StoreConfig describes the on-disk event hierarchy and the durable cursor record.
type StoreConfig struct {
	Root       string `yaml:"root" validate:"required"`
	Timezone   string `yaml:"timezone" validate:"required"`
	CursorFile string `yaml:"cursorFile" validate:"required"`
}

type MediaConfig struct {
	Mode        string `yaml:"mode" validate:"required|in:base64,url"`
	BaseUrl     string `yaml:"baseUrl"`
	ServeStatic bool   `yaml:"serveStatic"`
}

type CaptureConfig struct {
	Snapshots        int           `yaml:"snapshots" validate:"required|min:1|max:10"`
	SnapshotInterval time.Duration `yaml:"snapshotInterval"`
	SnapshotTimeout  time.Duration `yaml:"snapshotTimeout"`
	VideoEnabled     bool          `yaml:"videoEnabled"`
	VideoDuration    time.Duration `yaml:"videoDuration"`
	VideoTimeout     time.Duration `yaml:"videoTimeout"`
	QueueSize        int           `yaml:"queueSize" validate:"required|min:1"`
}

type CameraConfig struct {
	SnapshotUrl string        `yaml:"snapshotUrl"`
	VideoUrl    string        `yaml:"videoUrl"`
	EventsUrl   string        `yaml:"eventsUrl"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	Timeout     time.Duration `yaml:"timeout"`
}

type MotionConfig struct {
	PollInterval time.Duration `yaml:"pollInterval"`
	Kind         string        `yaml:"kind"`
	State        string        `yaml:"state"`
}

type MqttConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientId    string `yaml:"clientId"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	MotionTopic string `yaml:"motionTopic"`
	EventTopic  string `yaml:"eventTopic"`
}

type MirrorConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSSL"`
}

type SubscriptionConfig struct {
	FeePerMonth float64 `yaml:"feePerMonth"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName      string
	Debug        bool
	Path         string
	WebServer    Server             `yaml:"webServer"`
	Logger       LoggerConfig       `yaml:"logger"`
	Store        StoreConfig        `yaml:"store"`
	Media        MediaConfig        `yaml:"media"`
	Capture      CaptureConfig      `yaml:"capture"`
	Camera       CameraConfig       `yaml:"camera"`
	Motion       MotionConfig       `yaml:"motion"`
	Mqtt         MqttConfig         `yaml:"mqtt"`
	Mirror       MirrorConfig       `yaml:"mirror"`
	Subscription SubscriptionConfig `yaml:"subscription"`
	Cache        CacheConfig        `yaml:"cache"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}
