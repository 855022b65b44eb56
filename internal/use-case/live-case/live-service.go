package live_service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/robiulsunnyemon/eron/internal/dtos/live_dto"
	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/internal/queue"
	ledger_repo "github.com/robiulsunnyemon/eron/internal/repo/ledger"
	live_repo "github.com/robiulsunnyemon/eron/internal/repo/live"
	user_repo "github.com/robiulsunnyemon/eron/internal/repo/user"
	"github.com/robiulsunnyemon/eron/internal/rtc"
	"github.com/robiulsunnyemon/eron/internal/utils"
	"github.com/robiulsunnyemon/eron/internal/utils/types"
	"github.com/robiulsunnyemon/eron/state"
	"github.com/rs/zerolog/log"
)

const (
	counterLike    = "totalLike"
	counterComment = "totalComment"
	counterViews   = "totalViews"
)

type LiveService struct {
	AppState   *state.AppState
	LiveRepo   live_repo.LiveRepoContract
	LedgerRepo ledger_repo.LedgerRepoContract
	UserRepo   user_repo.UserRepoContract
	Tokens     rtc.TokenIssuer
	Producer   queue.Producer

	// serializes the entitlement check + charge per (room, viewer) within
	// this process; the unique index covers the multi-instance case
	joinLocks *utils.KeyedMutex
}

func NewLiveService(appState *state.AppState, tokens rtc.TokenIssuer, producer queue.Producer) LiveServiceContract {
	return &LiveService{
		AppState:   appState,
		LiveRepo:   live_repo.NewLiveRepo(appState),
		LedgerRepo: ledger_repo.NewLedgerRepo(appState),
		UserRepo:   user_repo.NewUserRepo(appState),
		Tokens:     tokens,
		Producer:   producer,
		joinLocks:  utils.NewKeyedMutex(),
	}
}

func (s *LiveService) StartLive(ctx context.Context, hostID string, req live_dto.StartAction) (*live_dto.LiveStartedEvent, *entity.LiveStream, *app_error.AppError) {
	now := time.Now().UTC()
	channelName := fmt.Sprintf("live_%s_%d", hostID, now.Unix())

	live := &entity.LiveStream{
		HostID:      hostID,
		ChannelName: channelName,
		IsPremium:   req.IsPremium,
		EntryFee:    req.EntryFee,
		Status:      entity.LiveStatusLive,
		StartTime:   now,
		CreatedAt:   now,
	}

	if err := s.LiveRepo.CreateLive(ctx, live); err != nil {
		return nil, nil, err
	}

	token, err := s.Tokens.IssueToken(channelName, hostID, true)
	if err != nil {
		log.Error().Err(err).Str("channel", channelName).Msg("failed to issue host credential")
		return nil, nil, app_error.NewAppError(http.StatusInternalServerError, "failed to issue media credential", "rtc")
	}

	log.Info().Str("channel", channelName).Str("hostID", hostID).Bool("premium", live.IsPremium).Int64("fee", live.EntryFee).Msg("live session started")

	return &live_dto.LiveStartedEvent{
		Event:       live_dto.EventLiveStarted,
		ChannelName: channelName,
		Credential:  token,
		UID:         rtc.HostUID,
	}, live, nil
}

func (s *LiveService) JoinLive(ctx context.Context, userID, channelName string) (*live_dto.JoinedSuccessEvent, *entity.LiveStream, *app_error.AppError) {
	live, appErr := s.LiveRepo.FindLiveByChannel(ctx, channelName)
	if appErr != nil {
		return nil, nil, appErr
	}

	roomID := live.ID.Hex()

	unlock := s.joinLocks.Lock(roomID + ":" + userID)
	existing, appErr := s.LedgerRepo.FindEntitlement(ctx, roomID, userID)
	if appErr != nil {
		unlock()
		return nil, nil, appErr
	}

	if existing == nil {
		var fee int64
		if live.IsPremium && live.EntryFee > 0 && live.HostID != userID {
			fee = live.EntryFee
		}

		if _, appErr = s.LedgerRepo.GrantEntry(ctx, roomID, userID, live.HostID, fee); appErr != nil {
			unlock()
			return nil, nil, appErr
		}
	}
	unlock()

	// rejects the join if the room ended between lookup and counter bump
	updated, appErr := s.LiveRepo.IncCounter(ctx, channelName, counterViews, 1)
	if appErr != nil {
		return nil, nil, appErr
	}
	live = updated

	token, err := s.Tokens.IssueToken(channelName, userID, false)
	if err != nil {
		log.Error().Err(err).Str("channel", channelName).Msg("failed to issue viewer credential")
		return nil, nil, app_error.NewAppError(http.StatusInternalServerError, "failed to issue media credential", "rtc")
	}

	balance, appErr := s.LedgerRepo.Balance(ctx, userID)
	if appErr != nil {
		return nil, nil, appErr
	}

	return &live_dto.JoinedSuccessEvent{
		Event:      live_dto.EventJoinedSuccess,
		Channel:    channelName,
		Credential: token,
		UID:        rtc.ViewerUID,
		NewBalance: balance,
	}, live, nil
}

func (s *LiveService) Like(ctx context.Context, userID, channelName string) (*live_dto.NewLikeEvent, *app_error.AppError) {
	live, appErr := s.LiveRepo.IncCounter(ctx, channelName, counterLike, 1)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.UserRepo.IncTotalLike(ctx, live.HostID); err != nil {
		log.Warn().Err(err).Str("hostID", live.HostID).Msg("failed to bump host like counter")
	}

	return &live_dto.NewLikeEvent{
		Event:      live_dto.EventNewLike,
		TotalLikes: live.TotalLike,
	}, nil
}

func (s *LiveService) Comment(ctx context.Context, userID, channelName, message string) (*live_dto.NewCommentEvent, *app_error.AppError) {
	live, appErr := s.LiveRepo.FindLiveByChannel(ctx, channelName)
	if appErr != nil {
		return nil, appErr
	}

	comment := &entity.LiveComment{
		SessionID:   live.ID.Hex(),
		ChannelName: channelName,
		UserID:      userID,
		Content:     message,
		CreatedAt:   time.Now().UTC(),
	}
	if appErr := s.LiveRepo.InsertComment(ctx, comment); appErr != nil {
		return nil, appErr
	}

	updated, appErr := s.LiveRepo.IncCounter(ctx, channelName, counterComment, 1)
	if appErr != nil {
		return nil, appErr
	}

	author := live_dto.CommentUser{ID: userID}
	if profile, err := s.UserRepo.GetProfileCached(ctx, userID); err == nil {
		author.Name = profile.FullName()
		author.Avatar = profile.ProfileImage
	}

	return &live_dto.NewCommentEvent{
		Event:         live_dto.EventNewComment,
		User:          author,
		Message:       message,
		TotalComments: updated.TotalComment,
	}, nil
}

func (s *LiveService) EndOnHostDisconnect(ctx context.Context, userID, channelName string) (bool, *app_error.AppError) {
	live, appErr := s.LiveRepo.FindLiveByChannel(ctx, channelName)
	if appErr != nil {
		if appErr.IsNotFound() {
			return false, nil // already ended
		}
		return false, appErr
	}

	if live.HostID != userID {
		return false, nil
	}

	ended, endedNow, appErr := s.LiveRepo.EndLive(ctx, channelName)
	if appErr != nil {
		return false, appErr
	}
	if !endedNow {
		return false, nil
	}

	log.Info().Str("channel", channelName).Str("hostID", userID).Msg("live session ended on host disconnect")
	s.enqueueCleanup(ctx, ended)

	return true, nil
}

func (s *LiveService) enqueueCleanup(ctx context.Context, live *entity.LiveStream) {
	if s.Producer == nil {
		return
	}

	payload := &types.RoomCleanupPayload{
		RoomID:       live.ID.Hex(),
		ChannelName:  live.ChannelName,
		HostID:       live.HostID,
		TotalLike:    live.TotalLike,
		TotalComment: live.TotalComment,
		TotalViews:   live.TotalViews,
		EndedAt:      time.Now().UTC(),
	}
	if live.EndTime != nil {
		payload.EndedAt = *live.EndTime
	}

	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      queue.JobRoomCleanup,
		Payload:   queue.MustMarshal(payload),
		Priority:  2,
		Retry:     0,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(5 * time.Minute).Unix(),
	}

	if err := s.Producer.Enqueue(ctx, job); err != nil {
		log.Error().Err(err).Str("channel", live.ChannelName).Msg("failed to enqueue room cleanup job")
		return
	}

	log.Info().Str("job_id", job.ID).Str("channel", live.ChannelName).Msg("room cleanup job enqueued")
}

func (s *LiveService) ListActive(ctx context.Context) ([]live_dto.ActiveLive, *app_error.AppError) {
	lives, appErr := s.LiveRepo.ListActive(ctx)
	if appErr != nil {
		return nil, appErr
	}

	resp := make([]live_dto.ActiveLive, 0, len(lives))
	for _, live := range lives {
		host := live_dto.HostProfile{ID: live.HostID}
		if profile, err := s.UserRepo.GetProfileCached(ctx, live.HostID); err == nil {
			host.Name = profile.FullName()
			host.Avatar = profile.ProfileImage
		}

		resp = append(resp, live_dto.ActiveLive{
			ID:           live.ID.Hex(),
			Host:         host,
			ChannelName:  live.ChannelName,
			IsPremium:    live.IsPremium,
			EntryFee:     live.EntryFee,
			Status:       live.Status,
			TotalLike:    live.TotalLike,
			TotalComment: live.TotalComment,
			TotalViews:   live.TotalViews,
		})
	}

	return resp, nil
}

func (s *LiveService) ListViewers(ctx context.Context, roomID string) ([]live_dto.LiveViewer, *app_error.AppError) {
	if _, appErr := s.LiveRepo.FindByID(ctx, roomID); appErr != nil {
		return nil, appErr
	}

	ents, appErr := s.LedgerRepo.ListEntitlements(ctx, roomID)
	if appErr != nil {
		return nil, appErr
	}

	viewers := make([]live_dto.LiveViewer, 0, len(ents))
	for _, ent := range ents {
		viewer := live_dto.LiveViewer{
			UserID:   ent.ViewerID,
			JoinedAt: ent.JoinedAt,
			FeePaid:  ent.FeePaid,
		}
		if profile, err := s.UserRepo.GetProfileCached(ctx, ent.ViewerID); err == nil {
			viewer.FullName = profile.FullName()
			viewer.ProfileImage = profile.ProfileImage
		}
		viewers = append(viewers, viewer)
	}

	return viewers, nil
}
