package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v5"
)

// fetchMaxTries — политика повторов загрузки: ровно одна повторная
// попытка с backoff, затем фатальная ошибка. Бесконечных retry нет.
const fetchMaxTries = 2

// S3Fetcher скачивает объект датасета из S3 в локальную директорию,
// сохраняя базовое имя объекта.
type S3Fetcher struct {
	client  *s3.Client
	bucket  string
	key     string
	destDir string
	timeout time.Duration
	logger  *slog.Logger
}

// S3FetcherConfig — конфигурация S3Fetcher.
type S3FetcherConfig struct {
	Bucket  string
	Key     string
	DestDir string
	Region  string
	Timeout time.Duration // таймаут одной попытки GetObject
	Logger  *slog.Logger
}

// NewS3Fetcher создаёт fetcher с credentials из стандартной цепочки SDK.
func NewS3Fetcher(ctx context.Context, cfg S3FetcherConfig) (*S3Fetcher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &S3Fetcher{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		key:     cfg.Key,
		destDir: cfg.DestDir,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Fetch скачивает объект в destDir и возвращает локальный путь.
//
// Запись идёт через временный файл с rename, поэтому повторный запуск
// идемпотентен: существующий файл перезаписывается атомарно, частично
// записанный датасет на диске не появляется. Отсутствие объекта в
// бакете — permanent ошибка без повторных попыток.
func (f *S3Fetcher) Fetch(ctx context.Context) (string, error) {
	name := path.Base(f.key)

	op := func() (string, error) {
		opCtx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		out, err := f.client.GetObject(opCtx, &s3.GetObjectInput{
			Bucket: aws.String(f.bucket),
			Key:    aws.String(f.key),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			var noBucket *types.NoSuchBucket
			if errors.As(err, &noKey) || errors.As(err, &noBucket) {
				return "", backoff.Permanent(fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, f.bucket, f.key))
			}
			f.logger.Warn("get object failed, may retry", "bucket", f.bucket, "key", f.key, "error", err)
			return "", fmt.Errorf("get object s3://%s/%s: %w", f.bucket, f.key, err)
		}
		defer out.Body.Close()

		return writeAtomic(f.destDir, name, out.Body)
	}

	dest, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(fetchMaxTries),
	)
	if err != nil {
		return "", err
	}

	f.logger.Info("dataset downloaded", "bucket", f.bucket, "key", f.key, "dest", dest)
	return dest, nil
}
