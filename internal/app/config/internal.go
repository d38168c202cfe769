package config

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Lab      AppLab
	RBAC     AppRBAC
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	RequestTimeoutInSeconds    int
	CORSAllowedOrigins         []string
}

type AppJWT struct {
	Secret string
}

type AppLab struct {
	// LoadThreshold is the pending Processing count at which a technician is
	// reported as unavailable.
	LoadThreshold int
}

type AppRBAC struct {
	ModelPath  string
	PolicyPath string
}

type AppMinio struct {
	BucketName                          string
	PreSignedUrlObjectExpiryTimeInHours int
}

type AppRabbitMQ struct {
	LabEventsQueue string
}
